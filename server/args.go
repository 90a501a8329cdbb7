package server

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	keyClientID            = "ClientID"
	keyClientTransactionID = "ClientTransactionID"
)

type kind int

const (
	kindBool kind = iota
	kindInt32
	kindFloat
	kindString
	kindTime
)

// param is a parameter a route requires.
type param struct {
	name string
	kind kind
}

func boolParam(name string) param   { return param{name, kindBool} }
func int32Param(name string) param  { return param{name, kindInt32} }
func floatParam(name string) param  { return param{name, kindFloat} }
func stringParam(name string) param { return param{name, kindString} }
func timeParam(name string) param   { return param{name, kindTime} }

// args holds a request's parsed parameters. Accessors are only called for
// parameters the route declared, which parseArgs has already checked.
type args map[string]any

func (a args) boolean(name string) bool   { return a[name].(bool) }
func (a args) integer(name string) int32  { return a[name].(int32) }
func (a args) number(name string) float64 { return a[name].(float64) }
func (a args) text(name string) string    { return a[name].(string) }
func (a args) date(name string) time.Time { return a[name].(time.Time) }
func (a args) id() int32                  { return a.integer("Id") }

// millis reads an integer parameter given in milliseconds.
func (a args) millis(name string) time.Duration {
	return time.Duration(a.integer(name)) * time.Millisecond
}

// lookup returns the value of key, preferring an exact match and falling
// back to a case-insensitive one.
func lookup(values url.Values, key string) (string, bool) {
	if vs, ok := values[key]; ok && len(vs) > 0 {
		return vs[0], true
	}
	for k, vs := range values {
		if strings.EqualFold(k, key) && len(vs) > 0 {
			return vs[0], true
		}
	}
	return "", false
}

// uint32Value parses an optional transaction or client ID. Anything
// missing or malformed is 0.
func uint32Value(values url.Values, key string) uint32 {
	s, ok := lookup(values, key)
	if !ok {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

func parseArgs(values url.Values, params []param) (args, error) {
	a := make(args, len(params))
	for _, p := range params {
		s, ok := lookup(values, p.name)
		if !ok {
			return nil, fmt.Errorf("missing parameter %s", p.name)
		}
		v, err := p.parse(s)
		if err != nil {
			return nil, fmt.Errorf("parameter %s=%q is not a valid %s", p.name, s, p.kind)
		}
		a[p.name] = v
	}
	return a, nil
}

var errNotFinite = errors.New("not a finite number")

func (p param) parse(s string) (any, error) {
	switch p.kind {
	case kindBool:
		return strconv.ParseBool(strings.TrimSpace(s))
	case kindInt32:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		return int32(n), err
	case kindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return nil, errNotFinite
		}
		return f, err
	case kindTime:
		return parseDate(strings.TrimSpace(s))
	default:
		return s, nil
	}
}

func (k kind) String() string {
	switch k {
	case kindBool:
		return "boolean"
	case kindInt32:
		return "integer"
	case kindFloat:
		return "number"
	case kindTime:
		return "ISO 8601 date"
	default:
		return "string"
	}
}

// parseDate accepts RFC 3339 and the zoneless ISO 8601 form some clients
// send, which is taken as UTC.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.UTC)
}
