package entity

import (
	"fmt"
	"strings"
)

// Messenger is the cross-chain message-passing protocol used to relay a transfer.
type Messenger int

// Known messengers. The numeric values are part of the bridge request contract.
const (
	MessengerAllbridge Messenger = iota + 1
	MessengerWormhole
	MessengerCCTP
	MessengerCCTPV2
	MessengerOFT
)

var messengerNames = map[Messenger]string{
	MessengerAllbridge: "ALLBRIDGE",
	MessengerWormhole:  "WORMHOLE",
	MessengerCCTP:      "CCTP",
	MessengerCCTPV2:    "CCTP_V2",
	MessengerOFT:       "OFT",
}

// Messengers returns all known messengers in declaration order.
func Messengers() []Messenger {
	return []Messenger{MessengerAllbridge, MessengerWormhole, MessengerCCTP, MessengerCCTPV2, MessengerOFT}
}

// IsValid reports whether m is one of the known messengers.
func (m Messenger) IsValid() bool {
	_, ok := messengerNames[m]
	return ok
}

func (m Messenger) String() string {
	if name, ok := messengerNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Messenger(%d)", int(m))
}

// ParseMessenger resolves a messenger by its name, case-insensitively.
func ParseMessenger(name string) (Messenger, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for m, n := range messengerNames {
		if n == upper {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown messenger %q", name)
}

// MarshalText encodes the messenger by name so it can be used as a JSON map key.
func (m Messenger) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("cannot marshal unknown messenger %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a messenger from its name.
func (m *Messenger) UnmarshalText(text []byte) error {
	parsed, err := ParseMessenger(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MessengerTransferTime maps a messenger to its estimated transfer time in
// milliseconds. A nil value means the route exists but has no estimate.
type MessengerTransferTime map[Messenger]*int64

// TransferTime maps a destination chain to the per-messenger transfer times.
type TransferTime map[ChainSymbol]MessengerTransferTime
