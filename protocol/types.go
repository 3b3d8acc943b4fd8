package protocol

import "fmt"

// UploadResult is the target's verdict on an upload.
// Produced only after a reply token was recognized.
type UploadResult int

const (
	// ResultAllGood means the target accepted and stored the program
	ResultAllGood UploadResult = iota

	// ResultOutOfFlash means the program was rejected for lack of flash space
	ResultOutOfFlash

	// ResultOutOfMetadata means the program was rejected because the target
	// already stores as many programs as it can track
	ResultOutOfMetadata
)

// resultTokens lists every result with its reply token in match precedence order.
var resultTokens = []struct {
	result UploadResult
	token  string
}{
	{ResultAllGood, TokenAllGood},
	{ResultOutOfFlash, TokenOutOfFlash},
	{ResultOutOfMetadata, TokenOutOfMetadata},
}

// Token returns the reply token that produces this result.
func (r UploadResult) Token() string {
	for _, rt := range resultTokens {
		if rt.result == r {
			return rt.token
		}
	}
	return ""
}

// Accepted reports whether the target stored the program.
func (r UploadResult) Accepted() bool {
	return r == ResultAllGood
}

func (r UploadResult) String() string {
	switch r {
	case ResultAllGood:
		return "accepted"
	case ResultOutOfFlash:
		return "rejected: out of flash"
	case ResultOutOfMetadata:
		return "rejected: too many programs"
	default:
		return fmt.Sprintf("unknown result %d", int(r))
	}
}

// ParseToken maps an exact reply token to its result.
func ParseToken(token string) (UploadResult, bool) {
	for _, rt := range resultTokens {
		if rt.token == token {
			return rt.result, true
		}
	}
	return 0, false
}
