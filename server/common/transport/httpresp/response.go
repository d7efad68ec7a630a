package httpresp

const (
	ErrForbidden          = "Forbidden"
	ErrMissingBearerToken = "bearer token is required"
	ErrInvalidToken       = "invalid token"
	ErrMissingClipOrThumb = "Missing clip or thumb parameter"
	ErrMissingActionOrKey = "Missing action or clip_key"
	ErrBadClipKeyShape    = "clip_key must be clips/*.avi"
	ErrInvalidJSONBody    = "Invalid JSON body"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

// PresignResponse carries the pair of write URLs handed to the device.
type PresignResponse struct {
	ClipURL  string `json:"clip_url"`
	ThumbURL string `json:"thumb_url"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

func NewOKResponse() OKResponse {
	return OKResponse{OK: true}
}

func NewPresignResponse(clipURL, thumbURL string) PresignResponse {
	return PresignResponse{ClipURL: clipURL, ThumbURL: thumbURL}
}
