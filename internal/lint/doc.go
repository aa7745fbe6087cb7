// Package lint is the rule registry and dispatch layer.
//
// A Group binds one Checker to the Rules it may emit. NewRegistry indexes
// the rules by diagnostic Code, by allowed name and by message, and keeps
// one copy of each distinct Checker so a checker shared by several rules
// runs once per item. Filter drops diagnostics suppressed with
// `#[allow(name)]` on the anchor or one of its ancestors, or disabled in
// the project configuration.
package lint
