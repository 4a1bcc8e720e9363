// Package domain contains the plain data types exchanged between the order
// differ, the reconciliation scanner, the tariff catalog and the customs
// synthesizer. They carry no behavior beyond small derived accessors and are
// free of any transport or vendor-specific encoding.
package domain
