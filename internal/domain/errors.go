package domain

import "errors"

var (
	ErrZoneNotFound       = errors.New("shipping zone not found")
	ErrReservedZone       = errors.New("the rest-of-world zone cannot be modified")
	ErrMethodNotFound     = errors.New("shipping zone method not found")
	ErrMethodNotCreated   = errors.New("shipping zone method cannot be created")
	ErrTrashNotSupported  = errors.New("shipping methods do not support trashing")
	ErrInvalidMethodType  = errors.New("invalid shipping method type")
	ErrMethodTypeNotFound = errors.New("shipping method type not found")
	ErrInvalidParam       = errors.New("invalid parameter")
)
