package timestep

// Episode stores a full trajectory in the order it was experienced.
// Rewards[t] is the reward received after taking Actions[t] when
// observing Observations[t].
type Episode struct {
	Observations []int
	Actions      []int
	Rewards      []float64
}

// Append records that action was taken after observing obs, and that
// reward was received
func (e *Episode) Append(obs, action int, reward float64) {
	e.Observations = append(e.Observations, obs)
	e.Actions = append(e.Actions, action)
	e.Rewards = append(e.Rewards, reward)
}

// Len returns the number of steps in the episode
func (e *Episode) Len() int {
	return len(e.Rewards)
}

// Clear removes all steps from the episode, keeping the allocated
// memory
func (e *Episode) Clear() {
	e.Observations = e.Observations[:0]
	e.Actions = e.Actions[:0]
	e.Rewards = e.Rewards[:0]
}
