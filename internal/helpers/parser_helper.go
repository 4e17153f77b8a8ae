package helpers

import (
	"fmt"
	"strconv"
	"strings"
)

func ParseTicketID(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid ticket id %q", s)
	}
	return uint32(n), nil
}
