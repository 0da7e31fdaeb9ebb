package hamming

import "math/big"

// OverheadBits is the fixed protocol header cost added to every packet.
const OverheadBits = 100

// PacketSize is overhead + payload + redundancy, in bits.
func PacketSize(userData, redundantBits int) int {
	return OverheadBits + userData + redundantBits
}

// TotData is overhead + payload, the information part of a packet.
func TotData(userData int) int {
	return OverheadBits + userData
}

// Capability returns t*, the number of bit errors per packet a code with
// redundantBits of redundancy is assumed to correct.
//
// The search adds C(n,0), C(n,1), ... to a running sum while the sum stays
// within the Hamming bound 2^r and returns the number of added terms minus two.
// Once every coefficient has been added the sum is 2^n; if that still fits the
// bound all n bits are correctable and n is returned.
func Capability(packetSize, redundantBits int) int {
	if packetSize < 0 || redundantBits < 0 {
		return -1
	}
	bound := new(big.Int).Lsh(big.NewInt(1), uint(redundantBits))

	sum := new(big.Int)
	coeff := big.NewInt(1) // C(n,0)
	k := 0
	for sum.Cmp(bound) <= 0 {
		if k > packetSize {
			return packetSize
		}
		sum.Add(sum, coeff)
		nextBinomial(coeff, packetSize, k)
		k++
	}
	return k - 2
}

// CapabilityFor works from the payload size like the interactive tools do:
// the packet is tot_data + redundantBits long.
func CapabilityFor(userData, redundantBits int) int {
	return Capability(TotData(userData)+redundantBits, redundantBits)
}
