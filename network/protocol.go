package network

// FrameSize is the fixed size of every frame on the wire. Text shorter than
// the frame is null-padded; longer text is truncated.
const FrameSize = 2500

// Control tokens exchanged in-band with ordinary human-readable text.
const (
	TokenSendPlayerInfo = "SPI"          // server -> client: send your player profile now
	TokenIsYourTurn     = "IS_YOUR_TURN" // server -> client: your turn loop starts
	TokenNotYourTurn    = "NYT"          // server -> client: wait for further signals
	TokenUserInput      = "UI"           // server -> client: send one line of input now
	TokenTurnTerminated = "TT"           // server -> client: the active turn has ended
	TokenGameTerminated = "TG"           // server -> client: the game has ended

	TokenNoAdvice = "NO_ADVICE_SELECTED" // server -> client: no advice this turn

	// ProfileSeparator splits the client profile reply: "<name>>Y" / "<name>>N".
	ProfileSeparator = ">"
)
