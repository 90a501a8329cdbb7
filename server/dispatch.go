package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"alpaca-gateway/device"
	"alpaca-gateway/registry"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// route is one device member reachable at
// /api/v1/{type}/:devicenumber/{member}.
type route struct {
	method string
	member string
	params []param
	serve  func(s *Server, c *call)
}

// call carries one device request through dispatch.
type call struct {
	w         http.ResponseWriter
	r         *http.Request
	typ       device.Type
	number    uint32
	values    url.Values
	args      args
	device    device.Device
	clientID  uint32
	clientTxn uint32
	serverTxn uint32
	errNum    int32
	status    int
}

// get builds a GET route for a member without parameters.
func get[D device.Device, V value](member string, fn func(D) (V, error)) route {
	return getArgs(member, func(d D, _ args) (V, error) { return fn(d) })
}

// getArgs builds a GET route whose member reads the declared params.
func getArgs[D device.Device, V value](member string, fn func(D, args) (V, error), params ...param) route {
	return valueRoute(http.MethodGet, member, fn, params...)
}

// putValue builds a PUT route that answers with a value, as Action and the
// Command members do.
func putValue[D device.Device, V value](member string, fn func(D, args) (V, error), params ...param) route {
	return valueRoute(http.MethodPut, member, fn, params...)
}

func valueRoute[D device.Device, V value](method, member string, fn func(D, args) (V, error), params ...param) route {
	return route{
		method: method,
		member: member,
		params: params,
		serve: func(s *Server, c *call) {
			var v V
			err := invoke(s, c, func(d D) (err error) {
				v, err = fn(d, c.args)
				return err
			})
			if err != nil {
				var zero V
				v = zero
			}
			s.reply(c, valueResponse[V]{alpacaResponse: c.envelope(err), Value: emptyIfNil(v)})
		},
	}
}

// put builds a PUT route for a member without parameters.
func put[D device.Device](member string, fn func(D) error) route {
	return putArgs(member, func(d D, _ args) error { return fn(d) })
}

// putArgs builds a PUT route whose member reads the declared params.
func putArgs[D device.Device](member string, fn func(D, args) error, params ...param) route {
	return route{
		method: http.MethodPut,
		member: member,
		params: params,
		serve: func(s *Server, c *call) {
			err := invoke(s, c, func(d D) error { return fn(d, c.args) })
			s.reply(c, putResponse{alpacaResponse: c.envelope(err)})
		},
	}
}

// enum adapts a member returning an enumeration to the int32 shape.
func enum[D device.Device, E ~int32](fn func(D) (E, error)) func(D) (int32, error) {
	return func(d D) (int32, error) {
		v, err := fn(d)
		return int32(v), err
	}
}

// invoke runs fn against the resolved device. A panic becomes an error.
func invoke[D device.Device](s *Server, c *call, fn func(D) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("device panicked",
				zap.Stringer("type", c.typ),
				zap.Uint32("number", c.number),
				zap.String("path", c.r.URL.Path),
				zap.Any("panic", p),
				zap.Stack("stack"),
			)
			err = fmt.Errorf("%v", p)
		}
	}()
	d, ok := c.device.(D)
	if !ok {
		return fmt.Errorf("%s %d does not implement %s", c.typ, c.number, c.r.URL.Path)
	}
	return fn(d)
}

// envelope builds the common response fields. A device.Error keeps its
// number and message; anything else is reported as unspecified.
func (c *call) envelope(err error) alpacaResponse {
	resp := alpacaResponse{ClientTransactionID: c.clientTxn, ServerTransactionID: c.serverTxn}
	if err == nil {
		return resp
	}
	resp.ErrorNumber = device.ErrNumUnspecified
	resp.ErrorMessage = err.Error()
	if de, ok := device.AsError(err); ok {
		if de.Number != 0 {
			resp.ErrorNumber = de.Number
		}
		if de.Message != "" {
			resp.ErrorMessage = de.Message
		}
	}
	c.errNum = resp.ErrorNumber
	return resp
}

// reply sends v. If v cannot be encoded the client gets an unspecified
// error envelope instead.
func (s *Server) reply(c *call, v any) {
	c.status = http.StatusOK
	err := s.sendJSON(c.w, http.StatusOK, v)
	if err == nil {
		return
	}
	s.logger.Error("encoding response failed", zap.String("path", c.r.URL.Path), zap.Error(err))
	fallback := putResponse{c.envelope(fmt.Errorf("response could not be encoded: %w", err))}
	if err := s.sendJSON(c.w, http.StatusOK, fallback); err != nil {
		c.status = http.StatusInternalServerError
		http.Error(c.w, "internal server error", c.status)
	}
}

// dispatch serves route rt for device type t.
func (s *Server) dispatch(t device.Type, rt route) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		c := &call{w: w, r: r, typ: t, serverTxn: s.txn.Next()}
		c.values = requestValues(r)
		c.clientID = uint32Value(c.values, keyClientID)
		c.clientTxn = uint32Value(c.values, keyClientTransactionID)
		defer s.logCall(c)

		n, err := strconv.ParseUint(ps.ByName("devicenumber"), 10, 32)
		if err != nil {
			s.fault(c, badRequest("Device number %q is not a valid device number", ps.ByName("devicenumber")))
			return
		}
		c.number = uint32(n)

		inst, err := s.devices.Resolve(t, c.number)
		if errors.Is(err, registry.ErrDeviceNotFound) {
			s.fault(c, badRequest("Device %s %d does not exist in this server", t, c.number))
			return
		} else if err != nil {
			s.fault(c, badRequest("%v", err))
			return
		}
		c.device = inst.Device

		if c.args, err = parseArgs(c.values, rt.params); err != nil {
			s.fault(c, badRequest("%s %s: %v", r.Method, r.URL.Path, err))
			return
		}
		rt.serve(s, c)
	}
}

func (s *Server) fault(c *call, f *Fault) {
	c.status = f.Status
	s.logger.Warn("request refused",
		zap.String("path", c.r.URL.Path),
		zap.String("remote", c.r.RemoteAddr),
		zap.String("reason", f.Message),
	)
	sendFault(c.w, f)
}

// requestValues returns the query for GET and the parsed form otherwise.
func requestValues(r *http.Request) url.Values {
	if r.Method == http.MethodGet {
		return r.URL.Query()
	}
	if err := r.ParseForm(); err != nil {
		return url.Values{}
	}
	return r.Form
}

// logCall records the call at Debug. It never fails the request.
func (s *Server) logCall(c *call) {
	defer func() { _ = recover() }()
	ce := s.logger.Check(zap.DebugLevel, "alpaca call")
	if ce == nil {
		return
	}
	payload := url.Values{}
	for k, v := range c.values {
		if k != keyClientID && k != keyClientTransactionID {
			payload[k] = slices.Clone(v)
		}
	}
	ce.Write(
		zap.String("remote", c.r.RemoteAddr),
		zap.String("method", c.r.Method),
		zap.String("path", c.r.URL.Path),
		zap.Uint32("client_id", c.clientID),
		zap.Uint32("client_txn", c.clientTxn),
		zap.Uint32("server_txn", c.serverTxn),
		zap.Uint32("device_number", c.number),
		zap.String("payload", payload.Encode()),
		zap.Int("status", c.status),
		zap.Int32("error_number", c.errNum),
	)
}
