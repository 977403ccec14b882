package poker

import "fmt"

// EncodedCard packs a card into 32 bits:
//
//	+--------+--------+--------+--------+
//	|xxxbbbbb|bbbbbbbb|cdhsrrrr|xxpppppp|
//	+--------+--------+--------+--------+
//
// p is the rank prime, r the rank index, cdhs a one-hot suit flag and b a
// one-hot rank bit (deuce at bit 16, ace at bit 28).
type EncodedCard uint32

const (
	primeMask    = 0xFF
	rankIdxShift = 8
	suitShift    = 12
	suitMask     = 0xF000
	rankBitShift = 16
	rankBitMask  = 0x1FFF
)

// rankPrimes assigns a distinct prime to each rank, deuce to ace.
var rankPrimes = [NumRanks]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

// suitFlags is indexed by Suit and uses the cdhs bit order of the layout.
var suitFlags = [NumSuits]uint32{0x8, 0x4, 0x2, 0x1}

// Encode packs c. It fails with ErrInvalidCard for ranks or suits outside the
// standard deck.
func Encode(c Card) (EncodedCard, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("encode %v: %w", c, ErrInvalidCard)
	}
	return encode(c), nil
}

func encode(c Card) EncodedCard {
	return EncodedCard(
		uint32(1)<<c.Rank<<rankBitShift |
			suitFlags[c.Suit]<<suitShift |
			uint32(c.Rank)<<rankIdxShift |
			rankPrimes[c.Rank])
}

// Prime returns the rank prime stored in the low byte.
func (e EncodedCard) Prime() uint32 {
	return uint32(e) & primeMask
}

// RankIndex returns the 0..12 rank index.
func (e EncodedCard) RankIndex() Rank {
	return Rank(uint32(e) >> rankIdxShift & 0xF)
}

// SuitFlag returns the suit region, still in place (bits 12-15).
func (e EncodedCard) SuitFlag() uint32 {
	return uint32(e) & suitMask
}

// RankBit returns the one-hot rank bit shifted down into a 13-bit window.
func (e EncodedCard) RankBit() uint16 {
	return uint16(uint32(e) >> rankBitShift & rankBitMask)
}

// Card decodes e back into a Card.
func (e EncodedCard) Card() Card {
	var suit Suit
	switch e.SuitFlag() >> suitShift {
	case 0x8:
		suit = Clubs
	case 0x4:
		suit = Diamonds
	case 0x2:
		suit = Hearts
	default:
		suit = Spades
	}
	return Card{Rank: e.RankIndex(), Suit: suit}
}
