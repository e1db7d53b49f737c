package ports

// Shell is an interactive surface around the analyzer
type Shell interface {
	// Start runs the shell until it finishes or Stop is called
	Start() error

	// Stop stops the shell. It is safe to call before Start returns.
	Stop() error
}
