package domain

import "fmt"

// DecorateChannelName wraps a user-supplied name in the fixed brackets used
// for every temporary channel name.
func DecorateChannelName(name string) string {
	return fmt.Sprintf("[%s]", name)
}
