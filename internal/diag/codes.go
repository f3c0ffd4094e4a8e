package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Пропущенные запятые
	CommaBefore     Code = 1001
	CommaAfter      Code = 1002
	CommaBetween    Code = 1003
	CommaInSentence Code = 1004

	// IO
	IOLoadFileError   Code = 4001
	IOUnsupportedType Code = 4002

	// Конфигурация
	CfgBadRule Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown error",
	CommaBefore:       "Missing comma before word",
	CommaAfter:        "Missing comma after word",
	CommaBetween:      "Missing comma between paired words",
	CommaInSentence:   "Sentence usually contains a comma",
	IOLoadFileError:   "Failed to load document",
	IOUnsupportedType: "Unsupported document type",
	CfgBadRule:        "Invalid rule table",
}

// ID returns the stable identifier, e.g. "VSZ1001".
func (c Code) ID() string {
	return fmt.Sprintf("VSZ%04d", int(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Codes lists every known code in ascending order.
func Codes() []Code {
	return []Code{CommaBefore, CommaAfter, CommaBetween, CommaInSentence, IOLoadFileError, IOUnsupportedType, CfgBadRule}
}
