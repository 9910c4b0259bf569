// Package observable provides a value with synchronous observers.
//
// It is the push-immediately counterpart of package broadcast: there are no
// buffers and no goroutines, so an observer runs inside Set and sees each value
// as soon as it is stored.
//
//	v := observable.New(0)
//
//	var bag observable.Bag
//	defer bag.CancelAll()
//
//	bag.Add(v.OnChange(func(n int) {
//		fmt.Println("changed to", n)
//	}))
//
//	v.Set(1) // prints "changed to 1"
//
// Stream hands the values to a consumer on another goroutine through a
// broadcast subscription, so a slow reader never holds up Set.
package observable
