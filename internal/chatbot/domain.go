package chatbot

// Command represents supported bot commands
type Command string

const (
	CommandStart Command = "/start"
	CommandTop   Command = "/top"
	CommandHelp  Command = "/help"
	CommandReset Command = "/reset"
)

// IncomingCommand is a bot command extracted from a webhook update.
type IncomingCommand struct {
	Command  Command
	Args     []string
	UserID   int64
	ChatID   int64
	Username string
}

// IsValid checks if the command is one the bot dispatches
func (c Command) IsValid() bool {
	switch c {
	case CommandStart, CommandTop, CommandHelp, CommandReset:
		return true
	}
	return false
}
