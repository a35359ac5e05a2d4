package app

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelDanger
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelDanger:
		return "danger"
	}
	return "info"
}

// Notifier shows a short message to the user, fire and forget
type Notifier interface {
	Notify(level Level, msg string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(level Level, msg string)

func (f NotifierFunc) Notify(level Level, msg string) {
	f(level, msg)
}

// LogNotifier writes notifications to the log
var LogNotifier Notifier = NotifierFunc(func(level Level, msg string) {
	entry := logger.WithField("toast", level.String())
	switch level {
	case LevelWarning:
		entry.Warn(msg)
	case LevelDanger:
		entry.Error(msg)
	default:
		entry.Info(msg)
	}
})

func notifier(n Notifier) Notifier {
	if n == nil {
		return LogNotifier
	}
	return n
}
