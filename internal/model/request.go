package model

import "strings"

// DefaultOutputDir is used when no destination directory is given
const DefaultOutputDir = "."

// DownloadRequest is the immutable input of a run
type DownloadRequest struct {
	URL       string
	OutputDir string
}

// NewDownloadRequest builds a request, defaulting the output directory
func NewDownloadRequest(url, outputDir string) DownloadRequest {
	if strings.TrimSpace(outputDir) == "" {
		outputDir = DefaultOutputDir
	}
	return DownloadRequest{URL: strings.TrimSpace(url), OutputDir: outputDir}
}
