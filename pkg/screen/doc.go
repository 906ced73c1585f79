// Package screen holds the state behind the back-office screens: paged
// lists, create/update/remove round trips, blur and search-as-you-type
// validation, and the category tree cache.
//
// Controllers keep no goroutines of their own apart from debounce timers.
// Every intent method takes a context, checks for a token first, and
// reports failures as *bookhub.Failure. A failure never replaces the last
// good list, tree or form state.
//
//	policies := screen.NewPolicyScreen(client.Policies(), credentials)
//	if err := policies.Mount(ctx); err != nil {
//		fmt.Println(bookhub.DisplayMessage(err))
//	}
//
//	err := policies.List.UpdateFilter(ctx, func(f *bookhub.PolicyFilter) {
//		f.Type = bookhub.PolicyTypeBook
//	})
package screen
