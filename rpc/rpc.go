package rpc

import (
	"net"
	"net/rpc"

	"github.com/Progxy/phalsophobia-multiplayer/logger"
	"github.com/Progxy/phalsophobia-multiplayer/services"
)

// Server manages the admin RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// StatusSnapshot is what the admin service reports about the live game.
type StatusSnapshot struct {
	Phase            string
	Round            int
	PlayersAlive     int
	PlayersConnected int
	GhostZone        string
	GhostProbability int
}

// StatusSource supplies the snapshot; the server implements it.
type StatusSource interface {
	Snapshot() StatusSnapshot
}

// AdminService exposes the game status and historical stats over net/rpc.
type AdminService struct {
	source  StatusSource
	records *services.RecordService
}

func NewAdminService(source StatusSource, records *services.RecordService) *AdminService {
	return &AdminService{source: source, records: records}
}

// Register exposes the service through the default net/rpc registry.
func (as *AdminService) Register() error {
	return rpc.RegisterName("Admin", as)
}

type StatusArgs struct{}

type StatusReply struct {
	Snapshot StatusSnapshot
}

func (as *AdminService) Status(args *StatusArgs, reply *StatusReply) error {
	reply.Snapshot = as.source.Snapshot()
	return nil
}

type StatsArgs struct{}

type StatsReply struct {
	Outcomes map[string]int
}

func (as *AdminService) Stats(args *StatsArgs, reply *StatsReply) error {
	outcomes, err := as.records.OutcomeStats()
	if err != nil {
		return err
	}
	reply.Outcomes = outcomes
	return nil
}
