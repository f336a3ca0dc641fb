package log

// EngineSink adapts an EventLogger to the minimal history-line surface
// the engine emits on (it satisfies engine.EventSink structurally, so
// this package stays import-free of the engine). Each history line
// lands as an EventNote.
type EngineSink struct {
	Logger EventLogger
}

func (s EngineSink) LogEvent(turn int, phase string, player int, summary string) {
	s.Logger.Log(GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventNote,
		Details: summary,
	})
}
