package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
)

// Message type constants.
const (
	// ErrorType is red with a ✗ symbol.
	ErrorType MessageType = iota
	// WarningType is yellow with a ⚠ symbol.
	WarningType
	// ActivityType is uncolored with a ► symbol.
	ActivityType
	// AddedType is uncolored with a ✚ symbol.
	AddedType
	// SuccessType is green with a ✔ symbol.
	SuccessType
	// InfoType is blue with an ℹ symbol.
	InfoType
	// TitleType is bold and prefixed with an emoji.
	TitleType
)

// defaultTitleEmoji prefixes titles that do not set one.
const defaultTitleEmoji = "🗄"

// =============================================================================
// Message Types
// =============================================================================

// MessageType selects the styling of a message.
type MessageType int

// Message is a notification written to the user.
type Message struct {
	Type    MessageType
	Content string
	// Emoji is only used by TitleType.
	Emoji string
	// Writer defaults to os.Stdout.
	Writer io.Writer
	// Args are format arguments for Content.
	Args []any
}

// =============================================================================
// Convenience Functions
// =============================================================================

// Errorf writes an error message.
func Errorf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ErrorType, Content: format, Args: args, Writer: writer})
}

// Warningf writes a warning message.
func Warningf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: WarningType, Content: format, Args: args, Writer: writer})
}

// Activityf writes a message announcing work that is about to happen.
func Activityf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ActivityType, Content: format, Args: args, Writer: writer})
}

// Addedf writes a message confirming that something was stored.
func Addedf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: AddedType, Content: format, Args: args, Writer: writer})
}

// Successf writes a success message.
func Successf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Writer: writer})
}

// Infof writes an informational message.
func Infof(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: InfoType, Content: format, Args: args, Writer: writer})
}

// Titlef writes a bold title prefixed with emoji.
func Titlef(writer io.Writer, emoji, format string, args ...any) {
	WriteMessage(Message{Type: TitleType, Content: format, Args: args, Emoji: emoji, Writer: writer})
}

// =============================================================================
// WriteMessage
// =============================================================================

// WriteMessage formats msg and writes it as a single line. Continuation lines
// of multi-line content are indented under the first line's text.
func WriteMessage(msg Message) {
	if msg.Writer == nil {
		msg.Writer = os.Stdout
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	style := styleFor(msg.Type)

	prefix := style.symbol
	if msg.Type == TitleType {
		prefix = msg.Emoji
		if prefix == "" {
			prefix = defaultTitleEmoji
		}

		prefix += " "
	}

	_, err := style.color.Fprintf(msg.Writer, "%s%s\n", prefix, indentContinuation(content, prefix))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

// --- internals ---

type style struct {
	symbol string
	color  *fcolor.Color
}

func styleFor(msgType MessageType) style {
	switch msgType {
	case ErrorType:
		return style{symbol: "✗ ", color: fcolor.New(fcolor.FgRed)}
	case WarningType:
		return style{symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)}
	case ActivityType:
		return style{symbol: "► ", color: fcolor.New(fcolor.Reset)}
	case AddedType:
		return style{symbol: "✚ ", color: fcolor.New(fcolor.Reset)}
	case SuccessType:
		return style{symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)}
	case InfoType:
		return style{symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)}
	case TitleType:
		return style{color: fcolor.New(fcolor.Reset, fcolor.Bold)}
	default:
		return style{color: fcolor.New(fcolor.Reset)}
	}
}

func indentContinuation(content, prefix string) string {
	if prefix == "" || !strings.Contains(content, "\n") {
		return content
	}

	indent := strings.Repeat(" ", len([]rune(prefix)))
	lines := strings.Split(content, "\n")

	for idx := 1; idx < len(lines); idx++ {
		if lines[idx] != "" {
			lines[idx] = indent + lines[idx]
		}
	}

	return strings.Join(lines, "\n")
}
