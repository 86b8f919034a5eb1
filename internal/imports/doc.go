// Package imports derives the set of target tag names for a source file.
//
// Import statements are parsed into ImportSpecs and passed through a
// Classifier, a plain function that decides whether an imported name is a
// component worth tagging. Classifiers compose with Any, so the rule set can
// be swapped without touching the rewrite engine. A Resolver combines the
// classified imports with configured extras, a fallback component list and
// the built-in HTML element list according to its Mode.
package imports
