package server

import (
	"fmt"
	"net/http"
	"strconv"

	"alpaca-gateway/device"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

func (s *Server) mountManagement(r *httprouter.Router) {
	r.GET("/", s.serveIndex)
	r.GET("/management/apiversions", s.serveAPIVersions)
	r.GET("/management/v1/description", s.serveDescription)
	r.GET("/management/v1/configureddevices", s.serveConfiguredDevices)
}

func (s *Server) configureSetupAPI(r *httprouter.Router) {
	r.GET("/setup", s.serveSetup)
	for _, t := range device.Types() {
		r.GET("/setup/v1/"+t.PathSegment()+"/:devicenumber/setup", s.handleDeviceSetup(t))
	}
}

func (s *Server) stampTransaction(r *http.Request, resp *alpacaResponse) {
	q := r.URL.Query()
	resp.ClientTransactionID = uint32Value(q, keyClientTransactionID)
	resp.ServerTransactionID = s.txn.Next()
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprintln(w, s.description.ServerName)
}

func (s *Server) serveAPIVersions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := uint32ListResponse{Value: []uint32{1}}
	s.stampTransaction(r, &resp.alpacaResponse)
	s.writeManagement(w, resp)
}

func (s *Server) serveDescription(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := managementDescriptionResponse{Value: s.description}
	s.stampTransaction(r, &resp.alpacaResponse)
	s.writeManagement(w, resp)
}

func (s *Server) serveConfiguredDevices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := managementDevicesListResponse{Value: []DeviceConfiguration{}}
	for _, inst := range s.devices.List() {
		resp.Value = append(resp.Value, DeviceConfiguration{
			DeviceName:   inst.Name,
			DeviceType:   inst.Type.String(),
			DeviceNumber: inst.Number,
			UniqueID:     inst.UniqueID,
		})
	}
	s.stampTransaction(r, &resp.alpacaResponse)
	s.writeManagement(w, resp)
}

// serveSetup lists the served devices as plain text.
func (s *Server) serveSetup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s\n\n", s.description.ServerName)
	for _, inst := range s.devices.List() {
		fmt.Fprintf(w, "%s %d: %s (%s)\n", inst.Type, inst.Number, inst.Name, inst.UniqueID)
	}
}

func (s *Server) handleDeviceSetup(t device.Type) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		n, err := strconv.ParseUint(ps.ByName("devicenumber"), 10, 32)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		inst, err := s.devices.Resolve(t, uint32(n))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "%s\n\n%s %d has no settings to configure here.\n", inst.Name, t, inst.Number)
	}
}

func (s *Server) writeManagement(w http.ResponseWriter, resp any) {
	if err := s.sendJSON(w, http.StatusOK, resp); err != nil {
		s.logger.Error("encoding management response failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
