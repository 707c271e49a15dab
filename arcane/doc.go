// Package arcane derives numerological attributes ("arcana") from a birth date.
//
// Every value is produced by digit reduction: a number is replaced by the sum
// of its decimal digits until it is at or below a ceiling (22 for the major
// arcana, 9 for the footer scale).
//
// The derivation graph is built explicitly in dependency order:
//
//	Client ─┬─> MainStar ─> ErrorStar ─> MissionStar
//	        │       └──────────┴──────> Triangle (one per Pointer)
//	        ├─> FooterStar
//	        └─> PythagorianTable
//
// Constructors compute every attribute once and return immutable values, so a
// star is safe to share after construction. Labels() flattens a value into an
// insertion-ordered label → text map consumed by the layout stage.
package arcane
