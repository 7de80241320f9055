// Package reconcile reshapes an extracted output folder into the layout the
// game's mod loader expects:
//
//	res_mods/<version>/{objects,scripts}
//	mods/<version>/...
//
// Work happens in two stages. Cleanup deletes denylisted junk files and
// folders from the output root. Rules then run in declared order, each one
// moving or merging named folders (or moving a single file) from a source
// path to a target path. When the target folder already exists the source is
// merged into it: directories are combined recursively and files are
// overwritten by the incoming copy.
//
// Every operation checks for its source first and treats absence as
// success, so running the whole sequence again on its own output changes
// nothing. Real filesystem failures (permission denied, disk full) are
// returned to the caller; nothing is retried.
package reconcile
