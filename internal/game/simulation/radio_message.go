package simulation

import (
	"airport-simulator/pkg/types"
)

type RadioMessage struct {
	Tick     uint64
	Callsign types.AircraftID
	Message  string
	IsUrgent bool
}

func (s *Simulation) AddRadioMessage(callsign types.AircraftID, message string, isUrgent bool) {
	msg := RadioMessage{
		Tick:     s.Tick,
		Callsign: callsign,
		Message:  message,
		IsUrgent: isUrgent,
	}
	s.RadioLog = append(s.RadioLog, msg)

	if len(s.RadioLog) > s.maxRadioLogSize {
		s.RadioLog = s.RadioLog[len(s.RadioLog)-s.maxRadioLogSize:]
	}
}
