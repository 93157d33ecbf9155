// Package protocol defines the messages exchanged between realm clients and
// the server, and their framing on a stream.
package protocol

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pixil98/go-realms/internal/realm"
	"github.com/pixil98/go-realms/internal/selection"
)

// Kind tags a message shape on the wire.
type Kind uint8

const (
	KindRegister Kind = iota
	KindConnect
	KindRequestRealmsList
	KindRealmsList
	KindRequestNewRealm
	KindRequestRealm
	KindRealm
	KindExplorer
	KindDropEquipment
	KindPickEquipment
	KindInvestigateParticularity
	KindForgetParticularity
	KindQuit
	KindVoid
)

var kindNames = map[Kind]string{
	KindRegister:                 "Register",
	KindConnect:                  "Connect",
	KindRequestRealmsList:        "RequestRealmsList",
	KindRealmsList:               "RealmsList",
	KindRequestNewRealm:          "RequestNewRealm",
	KindRequestRealm:             "RequestRealm",
	KindRealm:                    "Realm",
	KindExplorer:                 "Explorer",
	KindDropEquipment:            "DropEquipment",
	KindPickEquipment:            "PickEquipment",
	KindInvestigateParticularity: "InvestigateParticularity",
	KindForgetParticularity:      "ForgetParticularity",
	KindQuit:                     "Quit",
	KindVoid:                     "Void",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Message is implemented by every protocol shape in this package and by
// nothing else.
type Message interface {
	Kind() Kind
	isMessage()
}

type Register struct{}

// Connect carries a client id. Clients send it to resume an identity;
// the server answers Register and Connect with the id it settled on.
type Connect struct {
	Client uuid.UUID `msgpack:"client" json:"client"`
}

type RequestRealmsList struct{}

type RealmsList struct {
	Realms selection.List[realm.RealmId] `msgpack:"realms" json:"realms"`
}

type RequestNewRealm struct{}

type RequestRealm struct {
	Realm realm.RealmId `msgpack:"realm" json:"realm"`
}

// Realm carries a realm view.
type Realm struct {
	Realm realm.Realm `msgpack:"realm" json:"realm"`
}

type ExplorerOp uint8

const (
	OpChangeRegion ExplorerOp = iota
	OpAction
)

func (o ExplorerOp) String() string {
	switch o {
	case OpChangeRegion:
		return "ChangeRegion"
	case OpAction:
		return "Action"
	default:
		return fmt.Sprintf("ExplorerOp(%d)", o)
	}
}

// Explorer moves an explorer or makes it act. Action is only read for
// OpAction.
type Explorer struct {
	Op       ExplorerOp       `msgpack:"op" json:"op"`
	Realm    realm.RealmId    `msgpack:"realm" json:"realm"`
	Region   realm.RegionId   `msgpack:"region" json:"region"`
	Explorer realm.ExplorerId `msgpack:"explorer" json:"explorer"`
	Action   realm.Action     `msgpack:"action" json:"action"`
}

// ChangeRegion builds a move request.
func ChangeRegion(r realm.RealmId, region realm.RegionId, e realm.ExplorerId) Explorer {
	return Explorer{Op: OpChangeRegion, Realm: r, Region: region, Explorer: e}
}

// Action builds an action request.
func Action(r realm.RealmId, region realm.RegionId, e realm.ExplorerId, a realm.Action) Explorer {
	return Explorer{Op: OpAction, Realm: r, Region: region, Explorer: e, Action: a}
}

// Target addresses an explorer standing in a region of a realm.
type Target struct {
	Realm    realm.RealmId    `msgpack:"realm" json:"realm"`
	Region   realm.RegionId   `msgpack:"region" json:"region"`
	Explorer realm.ExplorerId `msgpack:"explorer" json:"explorer"`
}

type DropEquipment struct {
	Target
	Equipment realm.Equipment `msgpack:"equipment" json:"equipment"`
}

type PickEquipment struct {
	Target
	Equipment realm.Equipment `msgpack:"equipment" json:"equipment"`
}

type InvestigateParticularity struct {
	Target
	Particularity realm.Particularity `msgpack:"particularity" json:"particularity"`
}

type ForgetParticularity struct {
	Target
	Particularity realm.Particularity `msgpack:"particularity" json:"particularity"`
}

type Quit struct{}

// Void is the explicit no-op request and the "nothing to report" response.
type Void struct{}

func (Register) Kind() Kind                 { return KindRegister }
func (Connect) Kind() Kind                  { return KindConnect }
func (RequestRealmsList) Kind() Kind        { return KindRequestRealmsList }
func (RealmsList) Kind() Kind               { return KindRealmsList }
func (RequestNewRealm) Kind() Kind          { return KindRequestNewRealm }
func (RequestRealm) Kind() Kind             { return KindRequestRealm }
func (Realm) Kind() Kind                    { return KindRealm }
func (Explorer) Kind() Kind                 { return KindExplorer }
func (DropEquipment) Kind() Kind            { return KindDropEquipment }
func (PickEquipment) Kind() Kind            { return KindPickEquipment }
func (InvestigateParticularity) Kind() Kind { return KindInvestigateParticularity }
func (ForgetParticularity) Kind() Kind      { return KindForgetParticularity }
func (Quit) Kind() Kind                     { return KindQuit }
func (Void) Kind() Kind                     { return KindVoid }

func (Register) isMessage()                 {}
func (Connect) isMessage()                  {}
func (RequestRealmsList) isMessage()        {}
func (RealmsList) isMessage()               {}
func (RequestNewRealm) isMessage()          {}
func (RequestRealm) isMessage()             {}
func (Realm) isMessage()                    {}
func (Explorer) isMessage()                 {}
func (DropEquipment) isMessage()            {}
func (PickEquipment) isMessage()            {}
func (InvestigateParticularity) isMessage() {}
func (ForgetParticularity) isMessage()      {}
func (Quit) isMessage()                     {}
func (Void) isMessage()                     {}

// Request is a message together with the id of the client sending it.
type Request struct {
	Client  uuid.UUID
	Message Message
}
