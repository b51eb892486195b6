package game

// Item is anything a backpack slot or a zone can hold: evidence tools,
// consumables, and picked-up evidence all share the slot array, so they
// share one tagged type instead of the numeric ranges the wire protocol
// once used.
type Item uint8

const (
	NoItem Item = iota
	EMFReader
	SpiritBox
	Camera
	Sedative
	Salt
	Adrenaline
	HundredDollar
	Knife
	Tranquillizer
	EvidenceEMF
	EvidenceSpiritBox
	EvidenceCamera
)

var itemNames = map[Item]string{
	NoItem:            "-",
	EMFReader:         "EMF",
	SpiritBox:         "SPIRIT_BOX",
	Camera:            "CAMERA",
	Sedative:          "SEDATIVE",
	Salt:              "SALT",
	Adrenaline:        "ADRENALINE",
	HundredDollar:     "HUNDRED_DOLLAR",
	Knife:             "KNIFE",
	Tranquillizer:     "TRANQUILLIZER",
	EvidenceEMF:       "EMF_EVIDENCE",
	EvidenceSpiritBox: "SPIRIT_BOX_EVIDENCE",
	EvidenceCamera:    "CAMERA_EVIDENCE",
}

func (i Item) String() string {
	if name, ok := itemNames[i]; ok {
		return name
	}
	return "-"
}

// IsEvidence reports whether the item is a collected proof of the ghost.
func (i Item) IsEvidence() bool {
	return i == EvidenceEMF || i == EvidenceSpiritBox || i == EvidenceCamera
}

// IsUsable reports whether the item has an activatable effect.
func (i Item) IsUsable() bool {
	return i >= Sedative && i <= Tranquillizer
}

// toolForEvidence maps each evidence kind to the tool required to pick it.
var toolForEvidence = map[Item]Item{
	EvidenceEMF:       EMFReader,
	EvidenceSpiritBox: SpiritBox,
	EvidenceCamera:    Camera,
}

// evidenceForTool is the inverse mapping, used by the advisor.
var evidenceForTool = map[Item]Item{
	EMFReader: EvidenceEMF,
	SpiritBox: EvidenceSpiritBox,
	Camera:    EvidenceCamera,
}

// caravanSlot fixes one registry slot per evidence kind so a kind can be
// deposited at most once.
var caravanSlot = map[Item]int{
	EvidenceEMF:       0,
	EvidenceSpiritBox: 1,
	EvidenceCamera:    2,
}

// ToolFor returns the tool needed to pick the given evidence.
func ToolFor(evidence Item) (Item, bool) {
	tool, ok := toolForEvidence[evidence]
	return tool, ok
}

// starterItems is the pool one of which every new player starts with.
var starterItems = []Item{EMFReader, SpiritBox, Camera, Sedative, Salt}

// zoneObjects is the pool for zone object regeneration. A roll one past the
// end of the pool collapses to "no object".
var zoneObjects = []Item{
	EMFReader, SpiritBox, Camera, Sedative, Salt,
	Adrenaline, HundredDollar, Knife, Tranquillizer,
}

// evidencePool is the pool for zone evidence regeneration; two of the five
// roll values collapse to "no evidence".
var evidencePool = []Item{EvidenceEMF, EvidenceSpiritBox, EvidenceCamera}

// itemEffects describes what each usable item does, shown on request.
var itemEffects = map[Item]string{
	Sedative:      "Use the SEDATIVE to increase the mental health by 40 points",
	Salt:          "Use the SALT to prevent a decrement of the mental health, caused by the ghost",
	Adrenaline:    "Use the ADRENALINE to go to the next zone and obtain an extra turn",
	HundredDollar: "Use the HUNDRED_DOLLAR to buy a TRANQUILLIZER or SALT",
	Knife:         "Use the KNIFE and if the mental health is under 30 kill all the players in the same zone as the current player",
	Tranquillizer: "Use the TRANQUILLIZER to increase the mental health by 40 points",
}

// EffectOf returns the effect description for a usable item.
func EffectOf(item Item) (string, bool) {
	effect, ok := itemEffects[item]
	return effect, ok
}
