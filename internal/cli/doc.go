package cli

// Package cli wires configuration, logging, terminal output and the download
// service behind the ytmp4 command line.
