package realm

import "errors"

var (
	ErrUnknownVariant  = errors.New("unknown realm variant")
	ErrUnknownRegion   = errors.New("unknown region")
	ErrUnknownExplorer = errors.New("unknown explorer")
	ErrNotPresent      = errors.New("explorer is not in the region")
	ErrNotPermitted    = errors.New("not permitted by the realm rules")
	ErrNoResources     = errors.New("region has no resources left")
	ErrItemAbsent      = errors.New("item not found")
)
