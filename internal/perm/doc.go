// Package perm is the permission decision kernel. It evaluates what a
// given identity snapshot may see or do: per-application access, edit
// rights, page-level grants within an application, and ordinal
// authentication-level thresholds.
//
// Every operation is a pure function of its inputs. The evaluator never
// performs I/O, never mutates the identity record, and fails closed: a
// nil identity, a missing permission entry, or an unknown application or
// page name always evaluates to denied.
//
// A static allow-list of privileged identity markers (employee id or
// email) bypasses stored permissions entirely. It is consulted before the
// stored grants in every operation, so privileged identities are granted
// even when their permission data is empty or absent. A narrower "super"
// tier additionally gates handicap-level edits and the control panel.
package perm
