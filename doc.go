/*
Package errfix builds a finite-state model of a system under test from a table of
(start state, action, end state) transitions, and generates random walks over
that model to use as test sequences.

# Concept

A state table describes what the system should do. errfix turns it into a model,
walks the model at random and measures how much of it each walk covers. A walk is
then replayed against a driver: the driver executes every action and verifies
that the system reached the expected state. When a verification fails the system
under test has diverged from the model.

# Usage

	eng, err := errfix.Load("login.csv")
	if err != nil {
		log.Fatal(err)
	}

	w, err := eng.Walk(ctx, "LoggedOut", 20, walk.NewSeededSource(1))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s%.1f%% of states, %.1f%% of transitions\n", w, w.StateCoverage, w.TransitionCoverage)

	// The driver offers one member per action and one "test_<state>" member per state.
	driver := replay.NewRegistry().
		Verify("LoggedOut", checkLoggedOut).
		Verify("LoggedIn", checkLoggedIn).
		Action("log_in", logIn).
		Action("log_out", logOut)

	if err := eng.Replay(ctx, w, driver); err != nil {
		log.Fatal(err)
	}

Generated walks can be kept in a WalkStore (memory or Redis) and replayed later.
*/
package errfix
