package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
)

const dateFormat = "2006-01-02"

// EncodeToken creates an opaque token from the (date, id) key of the last
// row of a page. Listings ordered by date desc, id desc resume after it.
func EncodeToken(date time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", date.Format(dateFormat), id)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (base64 decode)", apperrors.ErrValidation)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (split)", apperrors.ErrValidation)
	}

	date, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (date parse)", apperrors.ErrValidation)
	}
	return date, parts[1], nil
}
