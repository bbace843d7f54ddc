// Package core wires the iconrules components into one application.
//
// An App owns one vault, one rendered explorer and every cache derived from
// them. Start brings it up in a fixed order:
//
//  1. render the vault entries into the explorer
//  2. load the icon packs and signal the reload to the injection pipeline
//  3. assign manual icons, then apply the rules in sorted order
//  4. register the injection pipeline, which scans once and then observes
//
// File system changes reach the App through the vault.EventHandler methods;
// each one updates the explorer, lets the rule service react and flushes
// the resulting mutations to the pipeline before returning.
package core
