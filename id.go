package coinage

import "github.com/xraph/coinage/id"

// ID is the primary identifier type for all Coinage entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
