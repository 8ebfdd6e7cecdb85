package core

// RunSummary describes a finished (or abandoned) run for score storage.
type RunSummary struct {
	RunID    string  // Unique run identifier
	Track    string  // ID of the track that was played
	Score    int     // Final score
	Distance float64 // World units travelled
	Coins    int     // Coins collected
	Weather  string  // Weather mode when the run ended
	Frames   int     // Simulated frames, pauses excluded
}
