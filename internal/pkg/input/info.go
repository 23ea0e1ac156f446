package input

import (
	"fmt"
	"strings"

	"github.com/holoplot/go-evdev"
)

type PhysicalID string
type HandlerType int

// The hid-wiimote driver splits a single remote into several event nodes,
// one per hardware unit. Each node is distinguished by its name.
const (
	DI_TYPE_UNKNOWN       = HandlerType(iota)
	DI_TYPE_CORE          // remote buttons
	DI_TYPE_ACCEL         // accelerometer
	DI_TYPE_IR            // IR camera
	DI_TYPE_MOTION_PLUS   // gyroscope extension
	DI_TYPE_NUNCHUK       // nunchuk extension
	DI_TYPE_CLASSIC       // classic controller extension
	DI_TYPE_BALANCE_BOARD // balance board
	DI_TYPE_PRO           // Wii U pro controller
	DI_TYPE_DRUMS         // drum kit extension
	DI_TYPE_GUITAR        // guitar extension
)

func (ht HandlerType) String() string {
	switch ht {
	case DI_TYPE_CORE:
		return "CORE"
	case DI_TYPE_ACCEL:
		return "ACCEL"
	case DI_TYPE_IR:
		return "IR"
	case DI_TYPE_MOTION_PLUS:
		return "MOTION_PLUS"
	case DI_TYPE_NUNCHUK:
		return "NUNCHUK"
	case DI_TYPE_CLASSIC:
		return "CLASSIC"
	case DI_TYPE_BALANCE_BOARD:
		return "BALANCE_BOARD"
	case DI_TYPE_PRO:
		return "PRO"
	case DI_TYPE_DRUMS:
		return "DRUMS"
	case DI_TYPE_GUITAR:
		return "GUITAR"
	default:
		return "UNKNOWN"
	}
}

// Node names assigned by the hid-wiimote driver.
const (
	NameCore         = "Nintendo Wii Remote"
	NameAccel        = "Nintendo Wii Remote Accelerometer"
	NameIR           = "Nintendo Wii Remote IR"
	NameMotionPlus   = "Nintendo Wii Remote Motion Plus"
	NameNunchuk      = "Nintendo Wii Remote Nunchuk"
	NameClassic      = "Nintendo Wii Remote Classic Controller"
	NameBalanceBoard = "Nintendo Wii Remote Balance Board"
	NamePro          = "Nintendo Wii Remote Pro Controller"
	NameDrums        = "Nintendo Wii Remote Drums"
	NameGuitar       = "Nintendo Wii Remote Guitar"
)

// DeviceInfo contains information of every reported event device,
// it is supposed to be created by GetHandlers only
type DeviceInfo struct {
	ID    InputID // ID of the device
	Name  string  // name of the device
	Phys  string  // physical path to the device in the system hierarchy
	Sysfs string  // sysfs path
	Uniq  string  // unique identification code for the device (if device has it)

	eventName    string
	CapableTypes []evdev.EvType
}

type InputID struct {
	Bus     uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

func (i InputID) String() string {
	return fmt.Sprintf("0x%04x 0x%04x 0x%04x 0x%04x", i.Bus, i.Vendor, i.Product, i.Version)
}

// Event returns event name, like "event0" for /dev/input/event0
func (d *DeviceInfo) Event() string {
	return d.eventName
}

// EventPath returns a /dev/input/event filepath of the handler
func (d *DeviceInfo) EventPath() string {
	event := d.Event()
	if event == "" {
		return ""
	}
	return fmt.Sprintf("/dev/input/%s", event)
}

func (d *DeviceInfo) HandlerType() HandlerType {
	switch d.Name {
	case NameCore:
		return DI_TYPE_CORE
	case NameAccel:
		return DI_TYPE_ACCEL
	case NameIR:
		return DI_TYPE_IR
	case NameMotionPlus:
		return DI_TYPE_MOTION_PLUS
	case NameNunchuk:
		return DI_TYPE_NUNCHUK
	case NameClassic:
		return DI_TYPE_CLASSIC
	case NameBalanceBoard:
		return DI_TYPE_BALANCE_BOARD
	case NamePro:
		return DI_TYPE_PRO
	case NameDrums:
		return DI_TYPE_DRUMS
	case NameGuitar:
		return DI_TYPE_GUITAR
	}
	return DI_TYPE_UNKNOWN
}

// Supported tells if the handler belongs to a device this system cares about.
func (d *DeviceInfo) Supported() bool {
	return strings.HasPrefix(d.Name, NameCore)
}

// PhysicalUUID returns an identifier unique for a physical connection.
// The main usage is to identify groups of handlers that represent one
// hardware device. Remotes connected over bluetooth share the adapter
// address in phys, so uniq (the remote's own address) takes priority.
func (d *DeviceInfo) PhysicalUUID() PhysicalID {
	if d.Uniq != "" {
		return PhysicalID(d.Uniq)
	}
	phys := strings.Split(d.Phys, "/")
	return PhysicalID(phys[0])
}
