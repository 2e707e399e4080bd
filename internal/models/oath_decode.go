package models

import (
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// UnmarshalJSON accepts numbers sent as strings and a space separated scope,
// both of which show up in token replies depending on the endpoint version.
func (t *TwitchOautGetTokenResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		AccessToken  interface{} `json:"access_token"`
		ExpiresIn    interface{} `json:"expires_in"`
		RefreshToken interface{} `json:"refresh_token"`
		Scope        interface{} `json:"scope"`
		TokenType    interface{} `json:"token_type"`
		Status       interface{} `json:"status"`
		Message      interface{} `json:"message"`
	}
	if err := jsoniter.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = TwitchOautGetTokenResponse{
		AccessToken: looseString(raw.AccessToken),
		Scope:       looseScope(raw.Scope),
		TokenType:   looseString(raw.TokenType),
		Status:      int(looseInt(raw.Status)),
		Message:     looseString(raw.Message),
	}
	if raw.ExpiresIn != nil {
		expiresIn := looseInt(raw.ExpiresIn)
		t.ExpiresIn = &expiresIn
	}
	if raw.RefreshToken != nil {
		refreshToken := looseString(raw.RefreshToken)
		t.RefreshToken = &refreshToken
	}

	return nil
}

func looseString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// looseInt reads the integer prefix of a string, "3600s" gives 3600 and "abc" gives 0.
func looseInt(value interface{}) int64 {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int64(v)
	case string:
		s := strings.TrimSpace(v)
		end := 0
	scan:
		for i, r := range s {
			switch {
			case r >= '0' && r <= '9':
			case (r == '-' || r == '+') && i == 0:
			default:
				break scan
			}
			end = i + 1
		}
		n, err := strconv.ParseInt(s[:end], 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func looseScope(value interface{}) []string {
	switch v := value.(type) {
	case []interface{}:
		scopes := make([]string, 0, len(v))
		for _, item := range v {
			if scope := looseString(item); scope != "" {
				scopes = append(scopes, scope)
			}
		}
		return scopes
	case string:
		return strings.Fields(v)
	default:
		return nil
	}
}
