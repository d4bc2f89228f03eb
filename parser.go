package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrExtendedID = errors.New("extended identifier does not fit the 11-bit ID field")
	ErrNoPayload  = errors.New("frame carries no data byte")
)

// parseCSVLine parses a SavvyCAN CSV line in the format:
// Time Stamp,ID,Extended,Dir,Bus,LEN,D1,D2,D3,D4,D5,D6,D7,D8
func parseCSVLine(line string) (*CANFrame, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 7 {
		return nil, fmt.Errorf("not enough fields: got %d, need at least 7", len(fields))
	}

	frame := &CANFrame{
		Timestamp:  strings.TrimSpace(fields[0]),
		ID:         trimHexPrefix(strings.TrimSpace(fields[1])),
		IsExtended: strings.ToLower(strings.TrimSpace(fields[2])) == "true",
		Direction:  strings.TrimSpace(fields[3]),
	}

	// Parse Bus
	bus, err := strconv.Atoi(strings.TrimSpace(fields[4]))
	if err == nil {
		frame.Bus = bus
	}

	// Parse Length
	length, err := strconv.Atoi(strings.TrimSpace(fields[5]))
	if err != nil {
		return nil, fmt.Errorf("invalid length: %v", err)
	}
	if length < 0 || length > 8 {
		return nil, fmt.Errorf("invalid length: %d", length)
	}
	frame.Length = length

	// Parse Data bytes (D1-D8)
	frame.Data = make([]byte, 0, 8)
	for i := 0; i < length && 6+i < len(fields); i++ {
		hexStr := trimHexPrefix(strings.TrimSpace(fields[6+i]))
		b, err := strconv.ParseUint(hexStr, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid data byte D%d %q: %v", i+1, hexStr, err)
		}
		frame.Data = append(frame.Data, byte(b))
	}

	return frame, nil
}

// trimHexPrefix drops a leading 0x or 0X, which SavvyCAN writes in front of
// IDs and some exporters put in front of data bytes.
func trimHexPrefix(s string) string {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// parseCandumpLine extracts CAN ID and payload from candump format
// Format: (timestamp) interface ID#PAYLOAD
func parseCandumpLine(line string) (*CANFrame, error) {
	// Find the '#' separator
	idxHash := strings.Index(line, "#")
	if idxHash == -1 {
		return nil, fmt.Errorf("no # separator found")
	}

	// Extract ID part (everything before #)
	idPart := strings.TrimSpace(line[:idxHash])

	var timestamp string
	if start, end := strings.Index(idPart, "("), strings.LastIndex(idPart, ")"); start != -1 && end > start {
		timestamp = idPart[start+1 : end]
		idPart = idPart[end+1:]
	}
	idPart = strings.TrimSpace(idPart)

	// Remove interface name (vcan0, can0, etc.)
	if idx := strings.LastIndex(idPart, " "); idx != -1 {
		idPart = idPart[idx+1:]
	}

	canID := strings.TrimSpace(idPart)
	if canID == "" {
		return nil, fmt.Errorf("missing CAN ID")
	}

	// Extract and decode payload (everything after #)
	payloadHex := strings.ReplaceAll(strings.TrimSpace(line[idxHash+1:]), " ", "")
	payloadHex = strings.ReplaceAll(payloadHex, ".", "")

	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		return nil, fmt.Errorf("invalid payload %q: %w", payloadHex, err)
	}

	return &CANFrame{
		Timestamp:  timestamp,
		ID:         canID,
		IsExtended: len(canID) > 3,
		Data:       payload,
		Length:     len(payload),
	}, nil
}

// fieldsFromFrame maps a parsed frame onto the drawn fields: the identifier,
// the payload length as DLC and the first payload byte. SOF and EOF come
// from base.
func fieldsFromFrame(frame *CANFrame, base FrameFields, lenient bool) (FrameFields, error) {
	id, err := strconv.ParseUint(trimHexPrefix(frame.ID), 16, 32)
	if err != nil {
		return base, fmt.Errorf("invalid CAN ID %q: %w", frame.ID, err)
	}
	if frame.IsExtended && !lenient {
		return base, fmt.Errorf("%w: 0x%s", ErrExtendedID, frame.ID)
	}
	if len(frame.Data) == 0 {
		return base, fmt.Errorf("CAN ID 0x%s: %w", frame.ID, ErrNoPayload)
	}

	ff := base
	ff.ID = int(id)
	ff.DLC = frame.Length
	ff.Data = int(frame.Data[0])
	return ff, nil
}
