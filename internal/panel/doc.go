// Package panel models the three menu panels (root, submenu, sub-submenu).
//
// A Panel holds the entries it shows and one render Row per entry. Render is a
// full rebuild used when a panel opens or its entry count changes; Patch
// updates checkbox and label state in place so a refresh arriving mid-hover
// leaves row identity, hover state and pending timers untouched.
//
// The anchor is an index into the panel's entries rather than a reference to a
// drawn row, so a rebuild can never leave it pointing at a discarded node.
package panel
