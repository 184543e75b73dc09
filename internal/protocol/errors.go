package protocol

import "github.com/mcoot/seabattle-go/internal/model"

// InternalErrorText is reported for failures outside the domain error set
const InternalErrorText = "Internal server error"

// ErrorText returns the client-facing text for err
func ErrorText(err error) string {
	if msg := model.Message(err); msg != "" {
		return msg
	}
	return InternalErrorText
}

// IsInternal reports whether err falls outside the domain error set
func IsInternal(err error) bool {
	return model.Message(err) == ""
}
