/*
Package replay drives a system under test along a generated walk.

The coupling between a walk and a test harness is a naming convention: for
every step the driver executes the step's action label, then verifies the
destination state through a member named "test_" + state. The start state is
verified first.

A driver is anything AsDriver accepts:

  - a Driver implementation (Invoke by name), such as a *Registry;
  - a map of names to func() error or func(context.Context) error;
  - any value with exported methods, resolved by name ("test_logged_in" maps
    to the method TestLoggedIn, "log_out" to LogOut).

Drivers that can list their capabilities are checked before the first call,
so a missing member fails the replay up front instead of halfway through.
Failures returned by the driver are passed back to the caller unchanged.
*/
package replay
