package bot

// HardBot currently plays the same heuristics as MediumBot. It exists
// as its own type so match labels and bot identities can already
// advertise the level.
// TODO: add card counting over CompletedTricks to steer trump leads.
type HardBot struct {
	MediumBot
}
