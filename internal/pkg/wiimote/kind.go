package wiimote

import (
	"sort"
	"strings"

	"github.com/openwiimote/wiigo/internal/pkg/input"
)

// Kind identifies one hardware unit of a peripheral. Kinds are flags and can
// be OR'ed together wherever a set of units is expected.
type Kind uint

const (
	Core Kind = 1 << iota
	Accelerometer
	IR
	MotionPlus
	Nunchuk
	ClassicController
	BalanceBoard
	ProController
	Drums
	Guitar

	// All selects every unit the device currently exposes.
	All = Core | Accelerometer | IR | MotionPlus | Nunchuk |
		ClassicController | BalanceBoard | ProController | Drums | Guitar
)

func (k Kind) String() string {
	var parts []string
	for kind, name := range kindNames {
		if k&kind != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	if len(parts) == 1 {
		return parts[0]
	}
	// map iteration order is not stable
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

var kindNames = map[Kind]string{
	Core:              "core",
	Accelerometer:     "accelerometer",
	IR:                "ir",
	MotionPlus:        "motion plus",
	Nunchuk:           "nunchuk",
	ClassicController: "classic controller",
	BalanceBoard:      "balance board",
	ProController:     "pro controller",
	Drums:             "drums",
	Guitar:            "guitar",
}

var kindByHandler = map[input.HandlerType]Kind{
	input.DI_TYPE_CORE:          Core,
	input.DI_TYPE_ACCEL:         Accelerometer,
	input.DI_TYPE_IR:            IR,
	input.DI_TYPE_MOTION_PLUS:   MotionPlus,
	input.DI_TYPE_NUNCHUK:       Nunchuk,
	input.DI_TYPE_CLASSIC:       ClassicController,
	input.DI_TYPE_BALANCE_BOARD: BalanceBoard,
	input.DI_TYPE_PRO:           ProController,
	input.DI_TYPE_DRUMS:         Drums,
	input.DI_TYPE_GUITAR:        Guitar,
}
