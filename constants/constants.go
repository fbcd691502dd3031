// Package constants holds the fixed, network-level parameters the
// verification core is handed rather than deriving itself: generalized
// indices into the beacon block body tree and the transaction byte-list
// bound.
package constants

// TransactionInBlockBody is the generalized-index base for the
// transactions field of a beacon block body: the transaction at
// position i within the body lives at generalized index
// TransactionInBlockBody + i.
const TransactionInBlockBody uint64 = 1 << 22

// ReceiptsRootInBlockBody is the generalized index of the execution
// receipts-root field within the block body container. Its second-most
// significant bit is 1 (unlike TransactionInBlockBody's, which is 0),
// so for every transaction index below 2^21 the two fields resolve to
// different children of the body root and neither is a descendant of
// the other. Larger indices can set that bit and lose this property.
const ReceiptsRootInBlockBody uint64 = 1<<10 + 1<<9

// MaxBytesPerTransaction bounds the SSZ byte-list a transaction is
// tree-hashed as: 2^30.
const MaxBytesPerTransaction = 1 << 30
