package types

import (
	"strconv"
	"strings"
)

type MutationKind string

const (
	Created MutationKind = "CREATED"
	Updated MutationKind = "UPDATED"
	Deleted MutationKind = "DELETED"
)

const (
	ProductChannel  = "productChannel"
	OrderChannel    = "orderChannel"
	CategoryChannel = "categoryChannel"
)

func ReviewChannel(productID int64) string {
	return "reviewChannel_" + strconv.FormatInt(productID, 10)
}

// Event is the payload broadcast on a channel after a committed write.
type Event struct {
	Mutation MutationKind `json:"mutation"`
	Data     any          `json:"data"`
}

// ReviewChannelProduct extracts the product id from a review channel name.
func ReviewChannelProduct(name string) (int64, bool) {
	rest, ok := strings.CutPrefix(name, "reviewChannel_")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	return id, err == nil && id > 0
}

// KnownChannel reports whether name is a channel writes are published on.
func KnownChannel(name string) bool {
	switch name {
	case ProductChannel, OrderChannel, CategoryChannel:
		return true
	}
	_, ok := ReviewChannelProduct(name)
	return ok
}
