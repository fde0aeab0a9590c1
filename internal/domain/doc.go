// Package domain defines the records cnft persists and the interfaces its
// services depend on. Records live in the types subpackage and contracts in
// the interfaces subpackage; both are re-exported here as aliases. Concrete
// implementations live in internal/store and internal/rpc.
package domain
