package api

import (
	"errors"
	"fmt"
)

// MaxDeviceLength - предельная длина адреса устройства
const MaxDeviceLength = 64

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// ConnectParams - параметры подключения к /ws
type ConnectParams struct {
	// Device адрес устройства. Пустой - сервер выдаст новый.
	Device string `json:"device"`
}

func (p ConnectParams) Validate() error {
	if len(p.Device) > MaxDeviceLength {
		return fmt.Errorf("device address too long: %d > %d", len(p.Device), MaxDeviceLength)
	}
	for _, r := range p.Device {
		if r <= ' ' || r > '~' {
			return errors.New("device address must be printable ASCII without spaces")
		}
	}
	return nil
}
