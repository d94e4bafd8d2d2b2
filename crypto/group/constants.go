package group

import (
	big "github.com/ncw/gmp"
)

// The fixed parameters of the group. P is a 4096 bit prime, Q = 2^256 - 189 is a
// prime dividing P-1, R = (P-1)/Q is the cofactor and G = 2^R mod P generates the
// subgroup of order Q.
//
// P has the form 2^4096 - 2^3840 + 2^256(floor(2^3584 * gamma) + d) - 1 where gamma is the
// Euler-Mascheroni constant and d is the smallest offset making P prime with Q | P-1.
const (
	pHex = "" +
		"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF" +
		"93C467E37DB0C7A4D1BE3F810152CB56A1CECC3AF65CC0190C03DF34709AFFBD" +
		"8E4B59FA03A9F0EED0649CCB621057D11056AE9132135A08E43B4673D74BAFEA" +
		"58DEB878CC86D733DBE7BF38154B36CF8A96D1567899AAAE0C09D4C8B6B7B86F" +
		"D2A1EA1DE62FF8643EC7C271827977225E6AC2F0BD61C746961542A3CE3BEA5D" +
		"B54FE70E63E6D09F8FC28658E80567A47CFDE60EE741E5D85A7BD46931CED822" +
		"0365594964B839896FCAABCCC9B31959C083F22AD3EE591C32FAB2C7448F2A05" +
		"7DB2DB49EE52E0182741E53865F004CC8E704B7C5C40BF304C4D8C4F13EDF604" +
		"7C555302D2238D8CE11DF2424F1B66C2C5D238D0744DB679AF2890487031F9C0" +
		"AEA1C4BB6FE9554EE528FDF1B05E5B256223B2F09215F3719F9C7CCC69DDF172" +
		"D0D6234217FCC0037F18B93EF5389130B7A661E5C26E54214068BBCAFEA32A67" +
		"818BD3075AD1F5C7E9CC3D1737FB28171BAF84DBB6612B7881C1A48E439CD03A" +
		"92BF52225A2B38E6542E9F722BCE15A381B5753EA842763381CCAE83512B3051" +
		"1B32E5E8D80362149AD030AABA5F3A5798BB22AA7EC1B6D0F17903F4E1F3A8C5" +
		"34AA85973F79A93FFB82A75C47C03D43D2F9CA02D03199BACEDDD45365093624" +
		"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF"

	qHex = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF43"

	rHex = "" +
		"100000000000000000000000000000000000000000000000000000000000000B" +
		"C93C467E37DB0C7A4D1BE3F810152CB56A1CECC3AF65CC0190C03DF34709B8AF" +
		"6A64C0CEDCF2D559DA9D97F095C3076C686037619148D2C86C317102AFA21480" +
		"31F04440AC0FF0C9A417A89212512E7607B2501DAA4D38A2C1410C4836149E2B" +
		"DB8C8260E627C4646963EFFE9E16E495D48BD215C6D8EC9D1667657A2A1C8506" +
		"F2113FFAD19A6B2BC7C45760456719183309F874BC9ACE570FFDA877AA2B23A2" +
		"D6F291C1554CA2EB12F12CD009B8B8734A64AD51EB893BD891750B85162241D9" +
		"08F0C9709879758E7E8233EAB3BF2D6AB53AFA32AA153AD6682E5A0648897C9B" +
		"E18A0D50BECE030C3432336AD9163E33F8E7DAF498F14BB2852AFFA814841EB1" +
		"8DD5F0E89516D557776285C16071D211194EE1C3F34642036AB886E3EC28882C" +
		"E4003DEA335B4D935BAE4B58235B9FB2BAB713C8F705A1C7DE42220209D6BBCA" +
		"CC467318601565272E4A63E38E2499754AE493AC1A8E83469EEF35CA27C271BC" +
		"792EEE21156E617B922EA8F713C22CF282DC5D6385BB12868EB781278FA0AB2A" +
		"8958FCCB5FFE2E5C361FC174420122B0163CA4A46308C8C46C91EA7457BD98F3" +
		"B9FD4A7F529FD4A7F529FD4A7F529FD4A7F529FD4A7F529FD4A7F529FD4A7F52" +
		"A"

	gHex = "" +
		"3E026A0F09C0CA0A2CD1932C2AFBF5FBA231C0E6E2B7F1611CCA4F6957BA31E0" +
		"5BEA15D1E13A0FCED2C0D38DF11F18D011BB3FD241C1E053895395E36863250B" +
		"859CA440E9EEF781D9AF977494F5F71D9F20BBBD770F089ED92F232CC91EB722" +
		"1C875C65A6F5B1290DA75CDF75BFF7CABFF0F30667C0D958007883D4E2F2A3F1" +
		"07426B8993586A5230C709274E42A5FCDACCF10FC0CF4568E3E4933D53B0BC58" +
		"6FFD12745CB3DB6D3CFCCE7A41377B27D18A611D875AD93FEB9A97BF06A046AF" +
		"A83CE80BC0491A83E6AD3AF8C66627BB4CBE8F27E2C4ACE47236A384BFE9B868" +
		"65C9304E84F84BDAB6771989B9B33B163CE48A02A359B684B795FDA7ECEE1746" +
		"58CD17D728A12E218FBBFA7E3451B4E80E25785D8568481175AA3797D7F19040" +
		"53A61F5E94E1ED66C2EC3E52B13625A152E78C5B24BF64A0E64FA81488AB4762" +
		"F64DF5B4CB98C7459CDF0FE46198DC9E151E0E892086C1C052F541A9D0EDB932" +
		"FA78DE54A239B4BD81D2FDCC065C7D3560BA072A468F1F1D39E0191727BBD81E" +
		"C6AC04794D4B8AEF6218A17307F5D9D733E42E6638AAC93ED4F3A682D6364D4C" +
		"82F2395CA20B4207EC26F99DAB459BAF07E862DAC55A35C43463F6E20A00DD16" +
		"502C4AD0F5A6CA9E70BB6560282BA72DC2F893A87D43891A0AE3C1CDF8F7A2D7" +
		"1ED640331827F4F0C3F81FDA4460D88FF55959B38F28DEB7C356629DF5C15F66"
)

const (
	// PBytes is the fixed width of an encoded ElementModP
	PBytes = 512
	// QBytes is the fixed width of an encoded ElementModQ
	QBytes = 32
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)

	pInt = mustHex(pHex)
	qInt = mustHex(qHex)
	rInt = mustHex(rHex)
	gInt = mustHex(gHex)

	pMinusTwo = new(big.Int).Sub(pInt, bigTwo)
	qMinusTwo = new(big.Int).Sub(qInt, bigTwo)
)

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("group: invalid hex constant")
	}
	return n
}

var (
	constP = &ElementModP{v: pInt}
	constR = &ElementModP{v: rInt}
	constG = &ElementModP{v: gInt, fixedBase: true}
	constQ = &ElementModQ{v: qInt}

	zeroModP = &ElementModP{v: bigZero}
	oneModP  = &ElementModP{v: bigOne}
	twoModP  = &ElementModP{v: bigTwo}
	zeroModQ = &ElementModQ{v: bigZero}
	oneModQ  = &ElementModQ{v: bigOne}
	twoModQ  = &ElementModQ{v: bigTwo}
)

// P is the prime modulus. It is not itself a member of the group, so it is only useful
// for display and comparison.
func P() *ElementModP { return constP }

// Q is the order of the subgroup generated by G.
func Q() *ElementModQ { return constQ }

// R is the cofactor (P-1)/Q.
func R() *ElementModP { return constR }

// G is the generator of the order Q subgroup.
func G() *ElementModP { return constG }

func ZeroModP() *ElementModP { return zeroModP }
func OneModP() *ElementModP  { return oneModP }
func TwoModP() *ElementModP  { return twoModP }
func ZeroModQ() *ElementModQ { return zeroModQ }
func OneModQ() *ElementModQ  { return oneModQ }
func TwoModQ() *ElementModQ  { return twoModQ }
