package ts2abc

import "strconv"

// uint32Key formats a literal-array / module index the same way the
// original driver does: std::to_string(counter), used as a map key.
func uint32Key(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
