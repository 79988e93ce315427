package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/tidwall/gjson"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// lambdaLogOutput receives the per-invocation logs.
var lambdaLogOutput io.Writer = os.Stderr

type optimizeResult struct {
	Minimum int64  `json:"minimum"`
	Mode    string `json:"mode"`
	Ranges  int    `json:"ranges"`
	Seeds   int64  `json:"seeds"`
	TimeMs  int64  `json:"timeMs"`
}

// handler accepts {"input": "<text almanac>"} or {"almanac": {...}}, plus an
// optional "mode".
func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}
	if !gjson.Valid(body) {
		return errResp(400, "invalid JSON")
	}

	req := gjson.Parse(body)
	cfg := DefaultConfig()
	if m := req.Get("mode"); m.Exists() {
		cfg.Mode = m.String()
	}
	if err := cfg.Validate(); err != nil {
		return errResp(400, err.Error())
	}

	var (
		a   *Almanac
		err error
	)
	switch {
	case req.Get("input").Exists():
		a, err = ParseAlmanac(strings.NewReader(req.Get("input").String()))
	case req.Get("almanac").IsObject():
		a, err = almanacFromJSON(req.Get("almanac"))
	default:
		return errResp(400, `missing "input" or "almanac" field`)
	}
	if err != nil {
		return errResp(400, err.Error())
	}

	log := newLogger(lambdaLogOutput, slog.LevelInfo)
	res, _, err := Solve(ctx, a, cfg, log, nil)
	switch {
	case errors.Is(err, ErrMalformedInput):
		return errResp(400, err.Error())
	case errors.Is(err, ErrNoSeedRanges):
		return errResp(422, err.Error())
	case err != nil:
		return errResp(500, err.Error())
	}

	ranges := a.Ranges(cfg.RunMode())
	resp := optimizeResult{
		Minimum: res.Minimum,
		Mode:    cfg.Mode,
		Ranges:  len(ranges),
		Seeds:   TotalSeeds(ranges),
		TimeMs:  res.Elapsed.Milliseconds(),
	}
	respJSON, _ := json.Marshal(resp)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}
