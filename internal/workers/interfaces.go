// Package workers runs the application's background workers as one
// group. The sync client uses it to host the periodic sync job next to
// whatever maintenance loops come later.
package workers

// Worker is a runnable background unit. Run either blocks for the
// worker's lifetime or spawns its own goroutines; the Workers group
// does not supervise restarts.
type Worker interface {
	Run()
}
