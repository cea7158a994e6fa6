// Package ui is orderdesk's Bubble Tea terminal interface.
//
// # Views
//
//   - Orders: every order with number, date, status badge, item count and total
//   - Editor: the order form backed by a draft.Draft, with a product picker
//   - Products: the catalog with add, edit and delete
//   - Logs: the tail of the JSON log file, decoded by package logtail
//
// A help overlay and modal dialogs (confirmation, product picker, product
// form) sit above the active view and take all key input while open.
//
// # Data Flow
//
// The model never mutates store state directly. Store actions run inside
// tea.Cmd functions so network calls stay off the render loop; each store's
// Changes channel is turned into a message that re-reads Snapshot. The
// header and status line reflect Offline and Error from both stores, orders
// first.
//
// # Guards
//
// Completed orders are refused before any store call: deleting one never
// opens the confirmation dialog, and opening one yields a locked draft.
package ui
