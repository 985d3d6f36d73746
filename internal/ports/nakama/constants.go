package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcExportSnapshot returns the caller's saved game as a signed token.
	RpcExportSnapshot = "export_snapshot"

	// RpcImportSnapshot verifies a signed token and stores it as the caller's saved game.
	RpcImportSnapshot = "import_snapshot"

	// MatchNameDoppelkopf is the authoritative match handler name registered with Nakama.
	MatchNameDoppelkopf = "doppelkopf_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame    int64 = 1
	OpPlayCard     int64 = 2
	OpAnnounceTeam int64 = 3
	OpRequestHint  int64 = 4

	// Server -> Client events
	OpPlayerJoined  int64 = 101
	OpPlayerLeft    int64 = 102
	OpGameStarted   int64 = 103
	OpHandDealt     int64 = 104 // send privately
	OpCardPlayed    int64 = 105
	OpTrickWon      int64 = 106
	OpTeamAnnounced int64 = 107
	OpAchievement   int64 = 108
	OpGameEnded     int64 = 109
	OpPlayRejected  int64 = 110 // send privately
	OpHintShown     int64 = 111 // send privately
)
