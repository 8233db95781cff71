// Package planner resolves configuration and a corpus sample into the
// RunPlan the engine executes.
//
//   - RunPlan: worker count, reducer strategy, tokenizer policy, batch size,
//     byte source, and the layout sample behind the policy choice (types.go)
//   - BuildPlan: decision flow from Config + discovered tasks (planner.go)
package planner
