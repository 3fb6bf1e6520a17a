// Package schematic adds Electron support to an Angular workspace project.
//
// NgAdd returns a Rule that runs four steps in order against a staged tree:
//
//  1. locate the project and resolve its source directory
//  2. write the serve-electron and build-electron architect targets
//  3. copy electron.main.js into the project's source root if absent
//  4. add the electron dev dependencies to package.json and queue an install
//
// The first failing step aborts the chain. Nothing reaches the disk until the
// caller commits the tree, and queued tasks run only after that commit.
package schematic
