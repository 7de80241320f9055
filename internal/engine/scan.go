package engine

// Scan lists the archives a run would extract, without touching the output.
func (e *Engine) Scan(req *ScanRequest) (*ScanResult, error) {
	input := e.cfg.InputFolder
	if req != nil && req.InputFolder != "" {
		input = req.InputFolder
	}

	entries, err := e.listArchives(input)
	if err != nil {
		return nil, err
	}

	return &ScanResult{
		Input:    input,
		Archives: entries,
	}, nil
}
