// Package view creates text views and notifies the components that asked to
// hear about them.
//
// A CreationListener is registered with ListenerMetadata naming the content
// types and view roles it applies to. When Host.CreateTextView builds a view,
// every matching listener's TextViewCreated runs exactly once, after the view
// is fully constructed and before it is marked ready for presentation.
// Listeners run sequentially on the caller's goroutine in Before/After order,
// falling back to registration order.
//
// A listener that panics does not abort the view or its siblings: the panic
// is recovered, logged, recorded in the NotificationReport and published as a
// listener.failed event, and delivery continues with the next listener.
package view
