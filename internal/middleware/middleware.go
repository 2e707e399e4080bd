package middleware

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const encodeFailedMessage = "cannot encode response"

type Response struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
}

func WriteSuccessData(w http.ResponseWriter, r *http.Request, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Data: data,
	})
}

func WriteErrorResponse(w http.ResponseWriter, r *http.Request, errCode int, err string) {
	writeJSON(w, errCode, Response{
		Error: err,
	})
}

// writeJSON encodes before the status goes out, so a payload that cannot be
// encoded turns into a 500 envelope instead of a truncated body.
func writeJSON(w http.ResponseWriter, code int, resp Response) {
	body, err := jsoniter.Marshal(resp)
	if err != nil {
		logrus.Errorf("%s: %v", encodeFailedMessage, err)

		code = http.StatusInternalServerError
		body, _ = jsoniter.Marshal(Response{Error: encodeFailedMessage})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(append(body, '\n')); err != nil {
		logrus.Warnf("cannot write response: %v", err)
	}
}
